package gdocai

import (
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"
)

// ResponseJSON renders a Document AI response as indented JSON for debugging.
func ResponseJSON(doc *documentaipb.Document) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
}
