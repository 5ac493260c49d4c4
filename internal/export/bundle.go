package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/pipelineerr"
	"github.com/mbsoft31/slr-pipeline/internal/queryplan"
)

// Bundle writes CSV, BibTeX, RIS, and the Markdown protocol under
// projectDir/export/ and returns their paths in a stable order
// (papers.csv, papers.bib, papers.ris, protocol.md) for the
// StrategyExportBundle artifact.
func Bundle(projectDir, projectTitle string, docs []queryplan.Document, protocol ProtocolInput) (artifact.StrategyExportBundle, error) {
	dir := filepath.Join(projectDir, "export")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return artifact.StrategyExportBundle{}, pipelineerr.IO("creating export directory", err)
	}

	var paths []string

	csvData, err := CSV(docs)
	if err != nil {
		return artifact.StrategyExportBundle{}, pipelineerr.Internal("serializing CSV export", err)
	}
	csvPath := filepath.Join(dir, "papers.csv")
	if err := os.WriteFile(csvPath, csvData, 0o644); err != nil {
		return artifact.StrategyExportBundle{}, pipelineerr.IO("writing CSV export", err)
	}
	paths = append(paths, csvPath)

	bibData, err := BibTeX(docs)
	if err != nil {
		return artifact.StrategyExportBundle{}, pipelineerr.Internal("serializing BibTeX export", err)
	}
	bibPath := filepath.Join(dir, "papers.bib")
	if err := os.WriteFile(bibPath, bibData, 0o644); err != nil {
		return artifact.StrategyExportBundle{}, pipelineerr.IO("writing BibTeX export", err)
	}
	paths = append(paths, bibPath)

	risData, err := RIS(docs)
	if err != nil {
		return artifact.StrategyExportBundle{}, pipelineerr.Internal("serializing RIS export", err)
	}
	risPath := filepath.Join(dir, "papers.ris")
	if err := os.WriteFile(risPath, risData, 0o644); err != nil {
		return artifact.StrategyExportBundle{}, pipelineerr.IO("writing RIS export", err)
	}
	paths = append(paths, risPath)

	mdData := Markdown(projectTitle, protocol)
	mdPath := filepath.Join(dir, "protocol.md")
	if err := os.WriteFile(mdPath, mdData, 0o644); err != nil {
		return artifact.StrategyExportBundle{}, pipelineerr.IO("writing markdown protocol export", err)
	}
	paths = append(paths, mdPath)

	return artifact.StrategyExportBundle{
		ExportedFiles: paths,
	}, nil
}

// LoadDocuments reads a search-results documents file written by the
// executor, used by the strategy-export stage to assemble the document set
// feeding CSV/BibTeX/RIS.
func LoadDocuments(path string) ([]queryplan.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pipelineerr.IO("reading search results file", err)
	}
	var docs []queryplan.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, pipelineerr.Wrap(pipelineerr.KindIO, "search results file is corrupt", err)
	}
	return docs, nil
}
