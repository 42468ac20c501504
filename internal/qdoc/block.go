package qdoc

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/qdoc2rst/internal/apimodel"
)

const (
	classValueList = "valuelist"
	enumColumns    = 3
)

// CollectBlock returns the element siblings following marker, stopping
// before the next h3 heading or at the end of the parent.
func CollectBlock(marker *html.Node) []*html.Node {
	if marker == nil {
		return nil
	}
	var out []*html.Node
	for n := marker.NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if n.DataAtom == atom.H3 {
			break
		}
		out = append(out, n)
	}
	return out
}

// BlockOptions controls how ClassifyBlock treats value tables.
type BlockOptions struct {
	// EnumTables turns siblings holding a value table into enum rows instead
	// of prose.
	EnumTables bool
}

// Block is the classified content of a declaration's sibling range.
type Block struct {
	Fragments  []apimodel.Fragment
	EnumValues [][]string
}

// ClassifyBlock sorts each node into enum rows or a description fragment.
// A node is never both.
func ClassifyBlock(nodes []*html.Node, opts BlockOptions) Block {
	var block Block
	for _, n := range nodes {
		if opts.EnumTables {
			if table := findClass(n, classValueList); table != nil {
				block.EnumValues = append(block.EnumValues, tableRows(table)...)
				continue
			}
		}
		block.Fragments = append(block.Fragments, apimodel.Fragment{
			Text: Linearize(n),
			Code: n.DataAtom == atom.Pre,
		})
	}
	return block
}

// tableRows reads every row of table as exactly three linearized cells,
// padding short rows with empty cells and dropping surplus cells.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			rows = append(rows, rowCells(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func rowCells(tr *html.Node) []string {
	cells := make([]string, 0, enumColumns)
	for _, c := range elementChildren(tr) {
		if c.DataAtom != atom.Td && c.DataAtom != atom.Th {
			continue
		}
		if len(cells) == enumColumns {
			break
		}
		cells = append(cells, Linearize(c))
	}
	for len(cells) < enumColumns {
		cells = append(cells, "")
	}
	return cells
}
