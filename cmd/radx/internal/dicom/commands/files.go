package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dcmkit/radx/cmd/radx/internal/config"
)

// DICOMFile is one candidate input file discovered on disk.
type DICOMFile struct {
	Path string
	Name string
	Size int64
}

// DICOMTag is one rendered element row produced by the dump command.
type DICOMTag struct {
	File  string `json:"file,omitempty"`
	Tag   string `json:"tag"`
	VR    string `json:"vr"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// listDicomFiles collects candidate DICOM files under dir. Files are
// accepted by extension (.dcm, .dicom) or by having no extension at all,
// which is common for files named by SOP Instance UID.
func listDicomFiles(dir string, recursive bool) ([]DICOMFile, error) {
	var files []DICOMFile

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".dcm", ".dicom", "":
		default:
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, DICOMFile{
			Path: path,
			Name: filepath.Base(path),
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	return files, nil
}

// validateDicomFile checks that the file is large enough to hold a preamble
// and carries the DICM prefix at offset 128.
func validateDicomFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 132)
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("file too short for DICOM preamble: %w", err)
	}
	if string(header[128:132]) != "DICM" {
		return fmt.Errorf("missing DICM prefix at offset 128")
	}
	return nil
}

// createOutputDirectory ensures the directory exists.
func createOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// RenderOutput writes the collected tag rows in the requested format.
func RenderOutput(tags []DICOMTag, format config.OutputFormat, w io.Writer) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tags)

	case config.FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"file", "tag", "vr", "name", "value"}); err != nil {
			return err
		}
		for _, t := range tags {
			if err := cw.Write([]string{t.File, t.Tag, t.VR, t.Name, t.Value}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	case config.FormatTable:
		fallthrough
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TAG\tVR\tNAME\tVALUE")
		for _, t := range tags {
			v := t.Value
			if len(v) > 64 {
				v = v[:61] + "..."
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Tag, t.VR, t.Name, v)
		}
		return tw.Flush()
	}
}
