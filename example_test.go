package shapejson_test

import (
	"fmt"

	"github.com/shapejson/shapejson"
)

func ExampleFields() {
	type point struct{ X, Y int }
	desc := shapejson.Fields(
		shapejson.Named("x", func(p *point) *int { return &p.X }, shapejson.Number[int]()),
		shapejson.Named("y", func(p *point) *int { return &p.Y }, shapejson.Number[int]()),
	)

	fmt.Println(shapejson.Stringify(point{X: 3, Y: 4}, desc))

	var p point
	if _, err := shapejson.Parse(`{"y": 7, "x": -1}`, &p, desc); err != nil {
		panic(err)
	}
	fmt.Println(p.X, p.Y)
	// Output:
	// {"x":3,"y":4}
	// -1 7
}

func ExampleElements() {
	type person struct {
		Name   string
		Age    int
		Active bool
	}
	desc := shapejson.Elements(
		shapejson.Elem(func(p *person) *string { return &p.Name }, shapejson.String[string]()),
		shapejson.Elem(func(p *person) *int { return &p.Age }, shapejson.Number[int]()),
		shapejson.Elem(func(p *person) *bool { return &p.Active }, shapejson.Bool[bool]()),
	)

	fmt.Println(shapejson.Stringify(person{"Steve", 25, true}, desc))
	// Output:
	// ["Steve",25,true]
}

func ExampleStringify_pretty() {
	type point struct{ X, Y int }
	desc := shapejson.Fields(
		shapejson.Named("x", func(p *point) *int { return &p.X }, shapejson.Number[int]()),
		shapejson.Named("y", func(p *point) *int { return &p.Y }, shapejson.Number[int]()),
	)
	f := shapejson.Format{NewlineElements: true, Indent: "  "}
	fmt.Println(shapejson.Stringify(point{X: 3, Y: 4}, desc, f))
	// Output:
	// {
	//   "x": 3,
	//   "y": 4
	// }
}

func ExampleParse_issues() {
	var v []int
	_, err := shapejson.Parse("[1 2]", &v, shapejson.Array(shapejson.Number[int]()))
	if iss, ok := shapejson.AsIssues(err); ok {
		fmt.Println(iss[0].Code, iss[0].Offset)
	}
	// Output:
	// parse_error 3
}
