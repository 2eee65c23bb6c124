package writers

import (
	"encoding/json"
	"io"

	"protgroup/core/annotate"
	"protgroup/core/greedy"
)

func init() {
	RegisterMatch("json", writeMatchJSON)
	RegisterGroup("json", writeGroupJSON)
}

// Wire shapes; field names are part of the output contract.
type matchJSON struct {
	Peptide   string `json:"peptide"`
	ProteinID string `json:"protein_id"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Length    int    `json:"length"`
}

type groupJSON struct {
	Peptide          string `json:"peptide"`
	ProteinGroup     string `json:"protein_group"`
	NProteinsInGroup int    `json:"n_proteins_in_group"`
}

func writeMatchJSON(w io.Writer, rows []annotate.Row, _ bool) error {
	out := make([]matchJSON, len(rows))
	for i, r := range rows {
		out[i] = matchJSON{Peptide: r.Peptide, ProteinID: r.ProteinID, Start: r.Start, End: r.End, Length: r.Length}
	}
	return encodePretty(w, out)
}

func writeGroupJSON(w io.Writer, rows []greedy.Row, _ bool) error {
	out := make([]groupJSON, len(rows))
	for i, r := range rows {
		out[i] = groupJSON{Peptide: r.Peptide, ProteinGroup: r.ProteinGroup, NProteinsInGroup: r.NProteinsInGroup}
	}
	return encodePretty(w, out)
}

func encodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
