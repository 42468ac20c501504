package qdoc

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
)

// voidElements never have end tags.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

// checkWellFormed verifies that every non-void element of the page is
// closed, in order. Pages that fail it, truncated ones included, are
// rejected before the HTML parser can repair them.
func checkWellFormed(data []byte) error {
	z := html.NewTokenizer(bytes.NewReader(data))
	var open []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return errors.ParseError("failed to tokenize page markup").WithCause(err).Build()
			}
			if len(open) > 0 {
				return errors.ParseError("malformed page markup").
					WithContext("unclosed", open[len(open)-1]).
					WithContext("depth", len(open)).
					Build()
			}
			return nil

		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[atom.Lookup(name)] {
				open = append(open, string(name))
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if voidElements[atom.Lookup(name)] {
				continue
			}
			if len(open) == 0 || open[len(open)-1] != string(name) {
				return errors.ParseError("malformed page markup").
					WithContext("unexpected_end_tag", string(name)).
					Build()
			}
			open = open[:len(open)-1]
		}
	}
}
