// Package reader holds the JSON readers for the petstore model.
package reader

import (
	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/codec"
	"github.com/reoring/restcodec/example/petstore"
	"github.com/reoring/restcodec/mapper"
	"github.com/reoring/restcodec/stringutil"
)

var (
	// PetReaderFactory serves the reader for petstore.Pet.
	PetReaderFactory = restcodec.NewReaderFactory[petstore.Pet](PetReader{})
	// CategoryReaderFactory serves the reader for petstore.Category.
	CategoryReaderFactory = restcodec.NewReaderFactory[petstore.Category](CategoryReader{})
)

func init() {
	mapper.Register("github.com/reoring/restcodec/example/petstore/json/reader.PetReaderFactory", PetReaderFactory)
	mapper.Register("github.com/reoring/restcodec/example/petstore/json/reader.CategoryReaderFactory", CategoryReaderFactory)
}

const (
	petID = iota
	petName
	petNickname
	petStatus
	petCategory
	petPhotoURLs
	petTags
	petBirthDate
	petWeightKg
)

var petFields = restcodec.NewFields(
	"id", "name", "nickname", "status", "category", "photoUrls", "tags", "birthDate", "weightKg",
).Require("id", "name", "photoUrls")

// PetReader reads petstore.Pet.
type PetReader struct{}

func (PetReader) ReadRequiredObject(s *restcodec.Session) (petstore.Pet, bool) {
	var p petstore.Pet
	ok := restcodec.ReadFields(s, petFields, func(s *restcodec.Session, field int) {
		switch field {
		case petID:
			if v, ok := restcodec.ReadInt[int64](s); ok && petstore.IDValidator.ValidateValue(v, s) {
				p.ID = v
			}
		case petName:
			if v, ok := restcodec.ReadString(s); ok && petstore.NameValidator.ValidateValue(v, s) {
				p.Name = v
			}
		case petNickname:
			if v, ok := restcodec.ReadNullableString(s); ok {
				p.Nickname = stringutil.BlankToEmpty(v)
			}
		case petStatus:
			if v, ok := restcodec.ReadString(s); ok && petstore.StatusValidator.ValidateValueOrEmpty(v, s) {
				p.Status = v
			}
		case petCategory:
			p.Category, _ = restcodec.ReadOptionalObject[petstore.Category](s, CategoryReader{})
		case petPhotoURLs:
			p.PhotoURLs, _ = restcodec.ReadStringArray(s)
		case petTags:
			if v, ok := restcodec.ReadStringArray(s); ok {
				p.Tags = stringutil.BlankToEmptyAll(v)
			}
		case petBirthDate:
			p.BirthDate, _ = codec.ReadNullableRFC3339(s)
		case petWeightKg:
			if v, ok := restcodec.ReadNullableFloat64(s); ok && petstore.WeightValidator.ValidateValueOrNull(v, s) {
				p.WeightKg = v
			}
		}
	})
	return p, ok
}

var categoryFields = restcodec.NewFields("id", "name").Require("id", "name")

// CategoryReader reads petstore.Category.
type CategoryReader struct{}

func (CategoryReader) ReadRequiredObject(s *restcodec.Session) (petstore.Category, bool) {
	var c petstore.Category
	ok := restcodec.ReadFields(s, categoryFields, func(s *restcodec.Session, field int) {
		switch field {
		case 0:
			c.ID, _ = restcodec.ReadInt[int64](s)
		case 1:
			c.Name, _ = restcodec.ReadNonBlankString(s)
		}
	})
	return c, ok
}
