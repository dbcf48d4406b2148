package importer

import (
	"io"

	"github.com/MrJamesThe3rd/rounds/internal/customer"
)

// Batch is a parsed upload, ready for customer.Service.Import.
type Batch struct {
	Rows      []customer.ImportRow
	Charset   string
	Delimiter rune
}

type Importer interface {
	Parse(r io.Reader) (*Batch, error)
}
