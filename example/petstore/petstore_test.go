package petstore_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/restcodec/example/petstore"
	_ "github.com/reoring/restcodec/example/petstore/json/reader"
	_ "github.com/reoring/restcodec/example/petstore/json/writer"
	"github.com/reoring/restcodec/mapper"
)

func TestMapperRoundTrip(t *testing.T) {
	m := mapper.New()
	for _, typ := range []reflect.Type{
		reflect.TypeOf((*petstore.Pet)(nil)).Elem(),
		reflect.TypeOf((*petstore.Pets)(nil)).Elem(),
		reflect.TypeOf((*[]petstore.Category)(nil)).Elem(),
	} {
		if !m.IsSupportedForReading(typ) || !m.IsSupportedForWriting(typ) {
			t.Fatalf("%v should be supported", typ)
		}
	}

	in := `[{"id":1,"name":"Tom","photoUrls":[]},{"id":2,"name":"Jerry","status":"pending","photoUrls":["j.png"]}]`
	pets, err := mapper.ReadAs[petstore.Pets](m, strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(pets) != 2 || pets[1].Status != "pending" {
		t.Fatalf("unexpected pets: %+v", pets)
	}

	var out strings.Builder
	if err := mapper.WriteAs(m, &out, pets); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.String() != in {
		t.Fatalf("want %s\ngot  %s", in, out.String())
	}
}

func TestValidators(t *testing.T) {
	if _, err := petstore.NameValidator.RequireValidValue("name", ""); err == nil {
		t.Fatalf("empty name should be rejected")
	}
	if _, err := petstore.StatusValidator.RequireValidValueOrEmpty("status", ""); err != nil {
		t.Fatalf("empty status should be accepted: %v", err)
	}
	if _, err := petstore.IDValidator.RequireValidValue("id", -1); err == nil {
		t.Fatalf("negative id should be rejected")
	}
}
