// Package petstore is a small model with codecs written the way generated
// code lays them out: the model here, readers in json/reader and writers in
// json/writer. Importing the reader and writer packages registers their
// factories with mapper.DefaultRegistry.
package petstore

import (
	"math"
	"time"

	"github.com/reoring/restcodec/validation"
)

// Pet is a pet offered by the store.
type Pet struct {
	ID        int64
	Name      string
	Nickname  string // blank input is stored as ""
	Status    string
	Category  *Category
	PhotoURLs []string
	Tags      []string
	BirthDate *time.Time
	WeightKg  *float64
}

// Pets is a list of pets.
type Pets []Pet

// Category groups pets.
type Category struct {
	ID   int64
	Name string
}

// Validators shared by the codecs and by handlers checking arguments.
var (
	IDValidator     = validation.MustRangeValidator[int64](1, math.MaxInt64)
	NameValidator   = validation.MustStringValidator(1, 64, `[\p{L}\p{N}][\p{L}\p{N} ._'-]*`)
	StatusValidator = validation.MustStringValidator(4, 9, `available|pending|sold`)
	WeightValidator = validation.MustRangeValidator[float64](0, 500)
)
