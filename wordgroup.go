// Package wordgroup looks words up in the Datamuse API and groups records by
// key.
//
// Usage:
//
//	import "github.com/spektr-org/wordgroup/grouping"
//
//	groups := grouping.GroupBy(people, grouping.ByField[grouping.Record]("team"))
//	for _, g := range groups.All() {
//	    fmt.Println(g.Key, len(g.Items))
//	}
//
// Grouping is local and synchronous. The datamuse package is the only one
// that talks to the network; lookup builds render-ready results on top of
// it, and render writes them as text, json or csv.
package wordgroup
