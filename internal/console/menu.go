package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"mineral-catalog/internal/domains/mineral/delimited"
	"mineral-catalog/internal/domains/mineral/model"
	"mineral-catalog/internal/domains/mineral/repository"
	"mineral-catalog/internal/domains/mineral/service"
	"mineral-catalog/pkg/logger"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
)

var menuItems = []string{
	"1. List minerals (compact)",
	"2. List minerals (full)",
	"3. Add a mineral",
	"4. Search by name",
	"5. Filter by class",
	"6. Filter by color",
	"7. Filter by location",
	"8. Sort by name",
	"9. Sort by hardness",
	"10. Remove a mineral",
	"11. Import a delimited file",
	"12. Export to a file",
	"13. Statistics",
	"14. Search all fields",
	"15. Filter by value category",
	"16. Save to storage",
	"17. Load from storage",
	"0. Exit",
}

// Menu is the interactive console front-end. repo is nil when no database
// is attached; items 16 and 17 then report that storage is unavailable.
type Menu struct {
	collection service.CollectionService
	exporter   service.ExportService
	repo       repository.Repository

	in     *bufio.Reader
	out    io.Writer
	styled bool
}

func NewMenu(
	collection service.CollectionService,
	exporter service.ExportService,
	repo repository.Repository,
	in io.Reader,
	out io.Writer,
) *Menu {
	return &Menu{
		collection: collection,
		exporter:   exporter,
		repo:       repo,
		in:         bufio.NewReader(in),
		out:        out,
		styled:     isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run shows the menu until the user picks 0 or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.title("MINERAL CATALOG")
		for _, item := range menuItems {
			fmt.Fprintln(m.out, item)
		}
		fmt.Fprintln(m.out, strings.Repeat("-", 60))

		line, err := m.prompt("Choose an action: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			m.fail("Invalid choice, enter a number.")
			continue
		}
		if choice == 0 {
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		}

		if err := m.dispatch(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case 1:
		m.showCompact("ALL MINERALS", m.collection.All())
	case 2:
		m.showFull("ALL MINERALS", m.collection.All())
	case 3:
		return m.add()
	case 4:
		return m.query("Name to search for: ", "SEARCH RESULTS", m.collection.SearchByName)
	case 5:
		return m.query("Class: ", "MINERALS BY CLASS", m.collection.FilterByClass)
	case 6:
		return m.query("Color: ", "MINERALS BY COLOR", m.collection.FilterByColor)
	case 7:
		return m.query("Location: ", "MINERALS BY LOCATION", m.collection.FilterByLocation)
	case 8:
		m.showCompact("SORTED BY NAME", m.collection.SortByName())
	case 9:
		m.showFull("SORTED BY HARDNESS", m.collection.SortByHardness())
	case 10:
		return m.remove()
	case 11:
		return m.importFile()
	case 12:
		return m.exportFile()
	case 13:
		m.showStats()
	case 14:
		return m.query("Text to search for: ", "SEARCH RESULTS", m.collection.SearchAllFields)
	case 15:
		return m.query("Value category (blank for all): ", "MINERALS BY VALUE CATEGORY", m.collection.FilterByValueCategory)
	case 16:
		m.save(ctx)
	case 17:
		m.load(ctx)
	default:
		m.fail("Invalid choice, try again.")
	}
	return nil
}

// ========================================
// ITEMS
// ========================================

func (m *Menu) add() error {
	m.title("NEW MINERAL")

	var req model.CreateMineralReq
	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &req.Name},
		{"Formula", &req.Formula},
		{"Class", &req.MineralClass},
		{"Color", &req.Color},
		{"Streak color", &req.StreakColor},
		{"Luster", &req.Luster},
		{"Hardness", &req.Hardness},
		{"Specific gravity", &req.SpecificGravity},
		{"Cleavage", &req.Cleavage},
		{"Fracture", &req.Fracture},
		{"Genesis", &req.Genesis},
		{"Application", &req.Application},
		{"Additional properties", &req.AdditionalProperties},
		{"Interesting facts", &req.InterestingFacts},
		{"Location", &req.Location},
		{"Value category", &req.ValueCategory},
		{"Image (optional)", &req.ImageURL},
	}
	for _, f := range fields {
		v, err := m.prompt(f.label + ": ")
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if err := req.Validate(); err != nil {
		m.fail("Error: " + err.Error())
		return nil
	}

	added := m.collection.Add(req.ToFields())
	m.ok(fmt.Sprintf("Mineral added with ID %d.", added.ID))
	return nil
}

func (m *Menu) query(label, title string, run func(string) []model.Mineral) error {
	q, err := m.prompt(label)
	if err != nil {
		return err
	}

	results := run(q)
	if len(results) == 0 {
		fmt.Fprintln(m.out, "No minerals found.")
		return nil
	}
	m.showCompact(title, results)
	return nil
}

func (m *Menu) remove() error {
	m.title("REMOVE A MINERAL")
	if m.collection.IsEmpty() {
		fmt.Fprintln(m.out, "The collection is empty.")
		return nil
	}

	m.showCompact("MINERALS", m.collection.All())
	fmt.Fprintln(m.out, "1. Remove by ID")
	fmt.Fprintln(m.out, "2. Remove by name")
	how, err := m.prompt("Your choice: ")
	if err != nil {
		return err
	}

	switch how {
	case "1":
		return m.removeByID()
	case "2":
		return m.removeByName()
	default:
		m.fail("Invalid choice.")
		return nil
	}
}

func (m *Menu) removeByID() error {
	raw, err := m.prompt("ID to remove: ")
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		m.fail("Invalid ID.")
		return nil
	}

	mineral, ok := m.collection.GetByID(id)
	if !ok {
		m.fail(fmt.Sprintf("No mineral with ID %d.", id))
		return nil
	}

	confirmed, err := m.confirm(mineral)
	if err != nil || !confirmed {
		return err
	}

	m.collection.RemoveByID(id)
	m.ok("Mineral removed.")
	return nil
}

func (m *Menu) removeByName() error {
	name, err := m.prompt("Name to remove: ")
	if err != nil {
		return err
	}
	if name == "" {
		m.fail("The name must not be empty.")
		return nil
	}

	var matches []model.Mineral
	for _, mineral := range m.collection.All() {
		if strings.EqualFold(mineral.Name, name) {
			matches = append(matches, mineral)
		}
	}

	switch len(matches) {
	case 0:
		m.fail(fmt.Sprintf("No minerals named %q.", name))
		return nil
	case 1:
		confirmed, err := m.confirm(matches[0])
		if err != nil || !confirmed {
			return err
		}
		m.collection.RemoveByName(name)
		m.ok("Mineral removed.")
		return nil
	default:
		m.showCompact("SEVERAL MINERALS SHARE THIS NAME", matches)
		fmt.Fprintln(m.out, "Remove by ID to pick one.")
		return nil
	}
}

func (m *Menu) confirm(mineral model.Mineral) (bool, error) {
	fmt.Fprintf(m.out, "About to remove:\nID: %d\nName: %s\nFormula: %s\nLocation: %s\n",
		mineral.ID, mineral.Name, mineral.Formula, mineral.Location)

	answer, err := m.prompt("Confirm (y/n): ")
	if err != nil {
		return false, err
	}
	if isYes(answer) {
		return true, nil
	}
	fmt.Fprintln(m.out, "Cancelled.")
	return false, nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}

func (m *Menu) importFile() error {
	path, err := m.prompt("File to import: ")
	if err != nil {
		return err
	}

	result, err := delimited.ReadFile(path)
	if err != nil {
		m.fail("Import failed: " + err.Error())
		return nil
	}

	added := m.collection.AddAll(result.Minerals)
	m.ok(fmt.Sprintf("Imported %d minerals from %s.", len(added), path))
	if result.Skipped > 0 {
		fmt.Fprintf(m.out, "Skipped %d rows:\n", result.Skipped)
		for _, e := range result.Errors {
			fmt.Fprintf(m.out, "  row %d: %s\n", e.Row, e.Error)
		}
	}
	return nil
}

// exportFile writes .xlsx, .html and .csv through the exporter and
// anything else in the delimited format.
func (m *Menu) exportFile() error {
	path, err := m.prompt("File to export to: ")
	if err != nil {
		return err
	}
	if path == "" {
		m.fail("The file name must not be empty.")
		return nil
	}

	if err := ExportToFile(m.exporter, path, m.collection.All()); err != nil {
		m.fail("Export failed: " + err.Error())
		return nil
	}

	m.ok("Exported to " + path + ".")
	return nil
}

// ExportToFile picks the format from the file extension.
func ExportToFile(exporter service.ExportService, path string, minerals []model.Mineral) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case service.FormatXLSX, service.FormatHTML, service.FormatCSV:
		file, err := exporter.Export(format, minerals)
		if err != nil {
			return err
		}
		return os.WriteFile(path, file.Content, 0o644)
	default:
		return delimited.WriteFile(path, minerals)
	}
}

func (m *Menu) showStats() {
	m.title("STATISTICS")
	WriteStats(m.out, m.collection.Stats())
}

// WriteStats prints the collection summary as plain text.
func WriteStats(w io.Writer, s model.Stats) {
	fmt.Fprintf(w, "Total minerals: %d\n", s.Total)
	if s.Total == 0 {
		return
	}

	fmt.Fprintln(w, "\nBy class:")
	for _, e := range s.ByClass {
		fmt.Fprintf(w, "  %s: %d\n", e.Key, e.Count)
	}
	fmt.Fprintln(w, "\nTop locations:")
	for _, e := range s.TopLocations {
		fmt.Fprintf(w, "  %s: %d\n", e.Key, e.Count)
	}
	fmt.Fprintln(w, "\nBy value category:")
	for _, e := range s.ByValueCategory {
		fmt.Fprintf(w, "  %s: %d\n", e.Key, e.Count)
	}
	fmt.Fprintf(w, "\nUnique locations: %d\n", s.UniqueLocations)
	fmt.Fprintf(w, "Unique colors: %d\n", s.UniqueColors)
	fmt.Fprintf(w, "Hardness range: %.1f - %.1f\n", s.MinHardness, s.MaxHardness)
}

func (m *Menu) save(ctx context.Context) {
	if m.repo == nil {
		m.fail("No database is attached.")
		return
	}

	if err := m.repo.SaveAll(ctx, m.collection.All()); err != nil {
		logger.Error("Console save failed", err)
		m.fail("Save failed: " + err.Error())
		return
	}
	m.ok(fmt.Sprintf("Saved %d minerals.", m.collection.Size()))
}

func (m *Menu) load(ctx context.Context) {
	if m.repo == nil {
		m.fail("No database is attached.")
		return
	}

	loaded, err := m.repo.LoadAll(ctx)
	if err != nil {
		logger.Error("Console load failed", err)
		m.fail("Load failed: " + err.Error())
		return
	}

	m.collection.Clear()
	m.collection.AddAll(loaded)
	m.ok(fmt.Sprintf("Loaded %d minerals.", len(loaded)))
}

// ========================================
// OUTPUT HELPERS
// ========================================

func (m *Menu) showCompact(title string, minerals []model.Mineral) {
	m.showTable(title, compactTable, compactRow, minerals)
}

func (m *Menu) showFull(title string, minerals []model.Mineral) {
	m.showTable(title, fullTable, fullRow, minerals)
}

func (m *Menu) showTable(title string, t Table, toRow func(model.Mineral) []string, minerals []model.Mineral) {
	m.title(title)
	if len(minerals) == 0 {
		fmt.Fprintln(m.out, "The collection is empty.")
		return
	}

	rows := make([][]string, 0, len(minerals))
	for _, mineral := range minerals {
		rows = append(rows, toRow(mineral))
	}
	t.Render(m.out, rows)
	fmt.Fprintf(m.out, "Total: %d\n", len(minerals))
}

func (m *Menu) title(s string) {
	if m.styled {
		s = titleStyle.Render(s)
	}
	fmt.Fprintf(m.out, "\n%s\n", s)
}

func (m *Menu) ok(s string) {
	if m.styled {
		s = successStyle.Render(s)
	}
	fmt.Fprintln(m.out, s)
}

func (m *Menu) fail(s string) {
	if m.styled {
		s = errorStyle.Render(s)
	}
	fmt.Fprintln(m.out, s)
}

// prompt returns the trimmed next line. A final line without a newline is
// still returned; io.EOF comes only when nothing was read.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
