package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/inodb/bed12/internal/bed12"
)

// reportError prints err to w. A missing name column additionally lists the
// attributes that could be used instead.
func reportError(w io.Writer, err error) {
	var notFound *bed12.FieldNotFoundError
	if !errors.As(err, &notFound) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Error: the column %q does not exist.\n", notFound.Field)
	if len(notFound.Available) > 0 {
		fmt.Fprintln(w, "The GTF attributes available for clustering are:")
		for _, k := range notFound.Available {
			fmt.Fprintf(w, "  %s\n", k)
		}
	}
	fmt.Fprintln(w, "Use -n/--name_col to choose one of them.")
}
