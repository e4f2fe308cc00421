package canonical_test

import (
	"fmt"

	"github.com/grapheq/grapheq/pkg/canonical"
	"github.com/grapheq/grapheq/pkg/gdl"
)

func ExampleCanonicalize() {
	// Node identifiers and declaration order do not matter; only the
	// content does.
	g := gdl.MustParse("(ada:Person { born: 1815 })-[:KNOWS]->(charles:Person { born: 1791 })")

	form, err := canonical.Canonicalize(g)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(form)
	// Output:
	// (:Person { born: 1791 }) => out:  in: ()<-[:KNOWS ]-(:Person { born: 1815 })
	// (:Person { born: 1815 }) => out: ()-[:KNOWS ]->(:Person { born: 1791 }) in:
}

func ExampleEqual() {
	left := gdl.MustParse("(a {v:1}), (b {v:2}), (a)-->(b)")
	right := gdl.MustParse("(x {v:2}), (y {v:1}), (y)-->(x)")

	equal, err := canonical.Equal(left, right)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(equal)
	// Output:
	// true
}
