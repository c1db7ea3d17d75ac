package diagfmt

import (
	"encoding/json"
	"io"

	"rms-check/internal/diag"
	"rms-check/internal/source"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string           `json:"ruleId"`
	Level     string           `json:"level"`
	Message   sarifMessage     `json:"message"`
	Locations []sarifLocation  `json:"locations"`
	Fixes     []sarifFix       `json:"fixes,omitempty"`
	Related   []sarifRelatedLoc `json:"relatedLocations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifRelatedLoc struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          sarifMessage          `json:"message"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine,omitempty"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Replacements     []sarifReplacement    `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion          `json:"deletedRegion"`
	InsertedContent sarifInsertedContent `json:"insertedContent"`
}

type sarifInsertedContent struct {
	Text string `json:"text"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifArtifactURI(span source.Span, fs *source.FileSet) string {
	f := fs.Get(span.File)
	return f.FormatPath("relative", fs.BaseDir())
}

func sarifRegionFor(span source.Span, fs *source.FileSet) sarifRegion {
	start, end := fs.Resolve(span)
	return sarifRegion{
		StartLine:   start.Line,
		StartColumn: start.Col,
		EndLine:     end.Line,
		EndColumn:   end.Col,
	}
}

// Sarif writes bag's diagnostics as a SARIF v2.1.0 log, for CI systems
// (GitHub code scanning, etc.) that consume that format rather than the
// plain JSON wire shape from json.go.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	seenRules := make(map[string]bool)
	rules := make([]sarifRule, 0)
	results := make([]sarifResult, 0, bag.Len())

	ctx := diag.FixBuildContext{FileSet: fs}

	for _, d := range bag.Items() {
		ruleID := d.Code.ID()
		if !seenRules[ruleID] {
			seenRules[ruleID] = true
			rules = append(rules, sarifRule{ID: ruleID, Name: ruleID})
		}

		result := sarifResult{
			RuleID:  ruleID,
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: sarifArtifactURI(d.Primary, fs)},
					Region:           sarifRegionFor(d.Primary, fs),
				},
			}},
		}

		for _, note := range d.Notes {
			result.Related = append(result.Related, sarifRelatedLoc{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: sarifArtifactURI(note.Span, fs)},
					Region:           sarifRegionFor(note.Span, fs),
				},
				Message: sarifMessage{Text: note.Msg},
			})
		}

		for _, f := range d.Fixes {
			resolved, err := resolveFix(ctx, f)
			if err != nil {
				continue
			}
			change := sarifArtifactChange{ArtifactLocation: sarifArtifactLocation{URI: sarifArtifactURI(d.Primary, fs)}}
			for _, edit := range resolved.Edits {
				change.Replacements = append(change.Replacements, sarifReplacement{
					DeletedRegion:   sarifRegionFor(edit.Span, fs),
					InsertedContent: sarifInsertedContent{Text: edit.NewText},
				})
			}
			result.Fixes = append(result.Fixes, sarifFix{
				Description:     sarifMessage{Text: resolved.Title},
				ArtifactChanges: []sarifArtifactChange{change},
			})
		}

		results = append(results, result)
	}

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    meta.ToolName,
				Version: meta.ToolVersion,
				Rules:   rules,
			}},
			Results: results,
		}},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}
