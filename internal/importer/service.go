package importer

import (
	"fmt"
	"io"
)

type Service struct {
	csv Importer
}

func NewService() *Service {
	return &Service{csv: NewCSVParser()}
}

// Parse reads an uploaded customer file. An upload with a header but no
// data rows is an error.
func (s *Service) Parse(r io.Reader) (*Batch, error) {
	batch, err := s.csv.Parse(r)
	if err != nil {
		return nil, err
	}

	if len(batch.Rows) == 0 {
		return nil, fmt.Errorf("%w: the file has no customer rows", ErrEmpty)
	}

	return batch, nil
}
