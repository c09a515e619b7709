package inspector

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scriptbridge/ecs"
)

// KindInfo summarizes one registered behavior variant.
type KindInfo struct {
	Name      string
	Instances int
}

func NewKindViewerPanel() KindViewerPanel {
	return KindViewerPanel{
		sortColumn:    1,
		sortAscending: false,
	}
}

// Render draws the behavior variant table and returns the variant clicked
// this frame, or "".
func (kv *KindViewerPanel) Render(world *ecs.World) string {
	if !imgui.BeginV("Behavior Kinds", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	kv.rebuild(world)

	maxInstances := 0
	for _, k := range kv.kinds {
		maxInstances = max(maxInstances, k.Instances)
	}

	var clicked string

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("KindTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Behavior")
		imgui.TableSetupColumn("Instances")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			kv.sortColumn = int(spec.ColumnIndex())
			kv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			kv.sort()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, k := range kv.kinds {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(k.Name, kv.selectedKind == k.Name, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				kv.selectedKind = k.Name
				clicked = k.Name
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", k.Instances))

			if maxInstances > 0 {
				barWidth := float32(k.Instances) / float32(maxInstances) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// rebuild lists every registered variant, including ones with no instances.
func (kv *KindViewerPanel) rebuild(world *ecs.World) {
	stats := world.CollectStats()

	kv.kinds = kv.kinds[:0]
	for _, name := range world.Registry().Names() {
		kv.kinds = append(kv.kinds, KindInfo{
			Name:      name,
			Instances: stats.BehaviorsByKind[name],
		})
	}
	kv.sort()
}

func (kv *KindViewerPanel) sort() {
	sort.SliceStable(kv.kinds, func(i, j int) bool {
		a, b := kv.kinds[i], kv.kinds[j]
		if !kv.sortAscending {
			a, b = b, a
		}
		var less bool

		switch kv.sortColumn {
		case 0:
			less = a.Name < b.Name
		default:
			less = a.Instances < b.Instances
		}

		return less
	})
}
