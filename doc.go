// Package helptext renders structured documents to styled, offset-addressable
// text for fixed-width display.
//
// A document tree, either reStructuredText nodes from an external parser or
// an XHTML element tree, is walked into lines of tagged runs. Words are
// filled up to a wrap width, nested style scopes are tracked on a tag stack,
// and every line records the character offset it starts at so hyperlink
// regions and section titles can be addressed by position.
//
// Core properties:
//   - Two walkers (RST and XHTML) over one line builder
//   - Offsets and columns count runes
//   - Tags are opaque labels; drawing them is left to the consumer
//   - No I/O in the engine
//
// Example:
//
//	doc, err := helptext.RenderRST(root, helptext.WithWidth(72))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, l := range doc.Links {
//		fmt.Println(l.Offset, l.Length, l.URI)
//	}
//	_ = helptext.WriteANSI(os.Stdout, doc, helptext.WithOSC8(helptext.DetectOSC8Support()))
//
// Markdown is supported through MarkdownToLine, which converts to XHTML and
// flattens the rendering into a single line.
package helptext
