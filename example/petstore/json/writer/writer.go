// Package writer holds the JSON writers for the petstore model.
package writer

import (
	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/codec"
	"github.com/reoring/restcodec/example/petstore"
	"github.com/reoring/restcodec/mapper"
)

var (
	// PetWriterFactory serves the writer for petstore.Pet.
	PetWriterFactory = restcodec.NewWriterFactory[petstore.Pet](PetWriter{})
	// CategoryWriterFactory serves the writer for petstore.Category.
	CategoryWriterFactory = restcodec.NewWriterFactory[petstore.Category](CategoryWriter{})
)

func init() {
	mapper.Register("github.com/reoring/restcodec/example/petstore/json/writer.PetWriterFactory", PetWriterFactory)
	mapper.Register("github.com/reoring/restcodec/example/petstore/json/writer.CategoryWriterFactory", CategoryWriterFactory)
}

// PetWriter writes petstore.Pet. Generator errors stick, so only the final
// call and codec conversions need checking.
type PetWriter struct{}

func (PetWriter) WriteObject(g *restcodec.Generator, p petstore.Pet) error {
	g.WriteStartObject()
	restcodec.WriteInt64Field(g, "id", p.ID)
	restcodec.WriteStringField(g, "name", p.Name)
	if p.Nickname != "" {
		restcodec.WriteStringField(g, "nickname", p.Nickname)
	}
	if p.Status != "" {
		restcodec.WriteStringField(g, "status", p.Status)
	}
	if p.Category != nil {
		restcodec.WriteObjectField[petstore.Category](g, CategoryWriter{}, "category", *p.Category)
	}
	photoURLs := p.PhotoURLs
	if photoURLs == nil {
		photoURLs = []string{}
	}
	restcodec.WriteStringArrayField(g, "photoUrls", photoURLs)
	if p.Tags != nil {
		restcodec.WriteStringArrayField(g, "tags", p.Tags)
	}
	if p.BirthDate != nil {
		if err := codec.WriteRFC3339Field(g, "birthDate", *p.BirthDate); err != nil {
			return err
		}
	}
	if p.WeightKg != nil {
		restcodec.WriteFloat64Field(g, "weightKg", *p.WeightKg)
	}
	return g.WriteEndObject()
}

// CategoryWriter writes petstore.Category.
type CategoryWriter struct{}

func (CategoryWriter) WriteObject(g *restcodec.Generator, c petstore.Category) error {
	g.WriteStartObject()
	restcodec.WriteInt64Field(g, "id", c.ID)
	restcodec.WriteStringField(g, "name", c.Name)
	return g.WriteEndObject()
}
