package restcodec_test

import (
	"errors"

	"github.com/reoring/restcodec"
)

type entity struct {
	ID    string
	Count int32
	Tags  []string
	Score *float64
}

var entityFields = restcodec.NewFields("id", "count", "tags", "score").Require("id")

type entityReader struct{}

func (entityReader) ReadRequiredObject(s *restcodec.Session) (entity, bool) {
	var e entity
	ok := restcodec.ReadFields(s, entityFields, func(s *restcodec.Session, field int) {
		switch field {
		case 0:
			e.ID, _ = restcodec.ReadNonBlankString(s)
		case 1:
			e.Count, _ = restcodec.ReadInt[int32](s)
		case 2:
			e.Tags, _ = restcodec.ReadStringArray(s)
		case 3:
			e.Score, _ = restcodec.ReadNullableFloat64(s)
		}
	})
	return e, ok
}

type entityWriter struct{}

func (entityWriter) WriteObject(g *restcodec.Generator, e entity) error {
	if err := g.WriteStartObject(); err != nil {
		return err
	}
	if err := restcodec.WriteStringField(g, "id", e.ID); err != nil {
		return err
	}
	if err := restcodec.WriteIntField(g, "count", e.Count); err != nil {
		return err
	}
	if e.Tags != nil {
		if err := restcodec.WriteStringArrayField(g, "tags", e.Tags); err != nil {
			return err
		}
	}
	if err := restcodec.WriteNullableFloat64Field(g, "score", e.Score); err != nil {
		return err
	}
	return g.WriteEndObject()
}

type empty struct{}

var emptyFields = restcodec.NewFields()

type emptyReader struct{}

func (emptyReader) ReadRequiredObject(s *restcodec.Session) (empty, bool) {
	return empty{}, restcodec.ReadFields(s, emptyFields, func(*restcodec.Session, int) {})
}

type emptyWriter struct{}

func (emptyWriter) WriteObject(g *restcodec.Generator, _ empty) error {
	if err := g.WriteStartObject(); err != nil {
		return err
	}
	return g.WriteEndObject()
}

var errBoom = errors.New("boom")

type failingWriter struct{}

func (failingWriter) WriteObject(*restcodec.Generator, empty) error { return errBoom }

func drivers() map[string]restcodec.JSONDriver {
	return map[string]restcodec.JSONDriver{
		"go-json":       restcodec.GoJSONDriver(),
		"encoding/json": restcodec.StdJSONDriver(),
	}
}
