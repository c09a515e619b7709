package inspector

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
)

type EntityInfo struct {
	ID        ecs.EntityId
	Name      string
	Behaviors []string
	Position  geom.Vector3
}

type entityBrowserCache struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserPanel(maxEntitiesPerPage int) EntityBrowserPanel {
	return EntityBrowserPanel{
		cache: &entityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserPanel) Render(world *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCache(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterKind = ""
	}
	if eb.filterKind != "" {
		imgui.Text(fmt.Sprintf("Behavior: %s", eb.filterKind))
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Behaviors")
		imgui.TableSetupColumn("Position")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filtered := eb.filteredEntities()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Name)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Behaviors, ", "))

			imgui.TableNextColumn()
			imgui.Text(entity.Position.String())
		}

		imgui.EndTable()
	}

	filtered := eb.filteredEntities()

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		eb.currentPage = min(eb.currentPage, totalPages-1)
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Positions change every frame, so the cache is rebuilt on every render.
func (eb *EntityBrowserPanel) rebuildCache(world *ecs.World) {
	eb.cache.entities = eb.cache.entities[:0]

	for e := range world.Entities() {
		infos := e.Behaviors()
		names := make([]string, len(infos))
		for i, b := range infos {
			names[i] = b.Name
		}

		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:        e.Id(),
			Name:      e.Name(),
			Behaviors: names,
			Position:  e.Position(),
		})
	}

	eb.sortEntities()
}

func (eb *EntityBrowserPanel) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		if !eb.cache.sortAscending {
			a, b = b, a
		}
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = strings.Join(a.Behaviors, ",") < strings.Join(b.Behaviors, ",")
		case 3:
			less = a.Position.Len() < b.Position.Len()
		default:
			less = a.ID < b.ID
		}

		return less
	})
}

func (eb *EntityBrowserPanel) filteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterKind == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterKind != "" && !slices.Contains(entity.Behaviors, eb.filterKind) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			nameStr := strings.ToLower(entity.Name)
			behaviorsStr := strings.ToLower(strings.Join(entity.Behaviors, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(nameStr, filterLower) &&
				!strings.Contains(behaviorsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowserPanel) Selected() ecs.EntityId {
	return eb.selected
}
