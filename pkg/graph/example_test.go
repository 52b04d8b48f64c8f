package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/coursegrid/pkg/curriculum"
	"github.com/matzehuels/coursegrid/pkg/graph"
)

func ExampleWriteGraph() {
	g := curriculum.New()
	_ = g.AddNode("MAT-01", "Calculus I", 90, 1)
	_ = g.AddNode("MAT-02", "Calculus II", 90, 2)
	_ = g.AddRequirement("MAT-02", "MAT-01")
	_ = g.Finalize()

	_ = graph.WriteGraph(g, os.Stdout)
	// Output:
	// {
	//   "courses": [
	//     {
	//       "code": "MAT-01",
	//       "name": "Calculus I",
	//       "duration": 90,
	//       "semester": 1
	//     },
	//     {
	//       "code": "MAT-02",
	//       "name": "Calculus II",
	//       "duration": 90,
	//       "semester": 2,
	//       "requirements": [
	//         "MAT-01"
	//       ]
	//     }
	//   ]
	// }
}

func ExampleFromCurriculum() {
	g := curriculum.New()
	_ = g.AddNode("B", "", 0, 2)
	_ = g.AddNode("A", "", 0, 1)
	_ = g.AddRequirement("B", "A")

	for _, c := range graph.FromCurriculum(g).Courses {
		fmt.Println(c.Code, c.Semester, c.Requirements)
	}
	// Output:
	// B 2 [A]
	// A 1 []
}
