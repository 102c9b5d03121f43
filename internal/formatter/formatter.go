// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// ExportToCSV converts a playlist to CSV with columns: Position, ID, Title, Artist, Duration, StreamURL
func ExportToCSV(p *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "ID", "Title", "Artist", "Duration", "StreamURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range p.Tracks() {
		record := []string{
			strconv.Itoa(i + 1),
			track.ID,
			track.Title,
			track.Artist,
			strconv.Itoa(track.Duration),
			track.StreamURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown
func ExportToMarkdown(p *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", p.Title()))

	if p.Description() != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", p.Description()))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", p.TrackCount()))

	buf.WriteString("## Tracks\n\n")
	for i, track := range p.Tracks() {
		duration := shared.FormatDuration(track.Duration)
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, track.Artist, track.Title, duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text
func ExportToText(p *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", p.Title()))
	if p.Description() != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", p.Description()))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", p.TrackCount()))

	for i, track := range p.Tracks() {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a playlist to an indented JSON document.
func ExportToJSON(p *models.Playlist) ([]byte, error) {
	doc := struct {
		ID          string          `json:"id"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Tracks      []*models.Track `json:"tracks"`
	}{
		ID:          p.ID(),
		Title:       p.Title(),
		Description: p.Description(),
		Tracks:      p.Tracks(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal playlist: %w", err)
	}

	return data, nil
}

// Export renders the playlist in the named format.
func Export(p *models.Playlist, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(p)
	case FormatCSV:
		return ExportToCSV(p)
	case FormatMarkdown:
		return ExportToMarkdown(p)
	case FormatText:
		return ExportToText(p)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// Extension returns the filename extension for the named format.
func Extension(format string) string {
	switch format {
	case FormatMarkdown:
		return "md"
	default:
		return format
	}
}

// WriteExport renders the playlist and writes it to path.
func WriteExport(p *models.Playlist, format, path string) error {
	data, err := Export(p, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
