package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
)

// EntityRow is one line of the entity browser.
type EntityRow struct {
	ID       sim.EntityId
	Name     string
	Position vec.Vec2
	Modules  []string
}

// Columns of the entity browser table, also used as sort keys.
const (
	ColumnID = iota
	ColumnName
	ColumnModules
	ColumnPosition
)

// EntityRows lists the entities of world whose id, name or module kinds
// contain filter, case-insensitively.
func EntityRows(world *sim.World, filter string) []EntityRow {
	filter = strings.ToLower(filter)
	rows := make([]EntityRow, 0, world.Len())

	for e := range world.Entities() {
		row := EntityRow{ID: e.Id, Name: e.Name, Position: e.Position}
		for m := range e.Modules() {
			row.Modules = append(row.Modules, sim.KindOf(m).String())
		}

		if filter != "" &&
			!strings.Contains(fmt.Sprintf("%d", row.ID), filter) &&
			!strings.Contains(strings.ToLower(row.Name), filter) &&
			!strings.Contains(strings.Join(row.Modules, " "), filter) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// SortRows orders rows by column. Unknown columns sort by id.
func SortRows(rows []EntityRow, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b EntityRow) int {
		var c int
		switch column {
		case ColumnName:
			c = strings.Compare(a.Name, b.Name)
		case ColumnModules:
			c = len(a.Modules) - len(b.Modules)
		case ColumnPosition:
			c = compareFloat(a.Position.LenSq(), b.Position.LenSq())
		default:
			c = int(a.ID) - int(b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// EntityBrowser is a sortable, filterable, paged table of entities.
type EntityBrowser struct {
	selected      sim.EntityId
	filterText    string
	sortColumn    int
	sortAscending bool
	perPage       int
	page          int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{
		sortAscending: true,
		perPage:       perPage,
	}
}

// Selected returns the id of the selected entity, or zero.
func (eb *EntityBrowser) Selected() sim.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) Select(id sim.EntityId) {
	eb.selected = id
}

func (eb *EntityBrowser) Render(world *sim.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	rows := EntityRows(world, eb.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Modules")
		imgui.TableSetupColumn("Position")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		SortRows(rows, eb.sortColumn, eb.sortAscending)

		start := min(eb.page*eb.perPage, len(rows))
		end := min(start+eb.perPage, len(rows))
		for _, row := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), eb.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = row.ID
			}

			imgui.TableNextColumn()
			imgui.Text(row.Name)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Modules, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f", row.Position.X, row.Position.Y))
		}

		imgui.EndTable()
	}

	if len(rows) > eb.perPage {
		totalPages := (len(rows) + eb.perPage - 1) / eb.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < totalPages-1 {
			eb.page++
		}
	} else {
		eb.page = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.End()
}
