// pkg/escp/doc.go

// Package escp encodes printer directives into Epson ESC/P and ESC/P2
// control sequences.
//
// A Builder is bound to one protocol variant, chosen from the print head pin
// count:
//
//	b, err := escp.SelectVariant(24)
//	if err != nil {
//		return err
//	}
//	b.Init().Bold(true).Text("Fox", charset.ASCII).Bold(false).FormFeed()
//	if err := b.Err(); err != nil {
//		return err
//	}
//	transport.Send(ctx, b.Bytes())
//
// A failing directive appends nothing and is reported by Err; chaining
// continues. ClearErr acknowledges the error and keeps the buffer.
//
// The package performs no I/O.
package escp
