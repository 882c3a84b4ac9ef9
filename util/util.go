package util

import (
	"encoding/json"
	"io"
	"log"
)

// FailOnError aborta el programa si hay error. Solo para arranque.
func FailOnError(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func DecodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
