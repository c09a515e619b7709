package inspector

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/bridge/native"
	"github.com/plus3/scriptbridge/geom"
)

type slotRow struct {
	Handle   bridge.SlotHandle
	Position geom.Vector3
}

func NewSlotViewerPanel() SlotViewerPanel {
	return SlotViewerPanel{}
}

func (sv *SlotViewerPanel) Render(store *native.Store) {
	if !imgui.BeginV("Native Slots", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Camera: %s (%d pushes)", store.Camera(), store.CameraPushes()))
	imgui.Text(fmt.Sprintf("Live slots: %d", store.PositionCount()))
	imgui.Separator()

	imgui.InputTextWithHint("##slotsearch", "Filter handle...", &sv.filterText, imgui.InputTextFlagsNone, nil)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SlotTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Handle")
		imgui.TableSetupColumn("Index")
		imgui.TableSetupColumn("Generation")
		imgui.TableSetupColumn("Position")
		imgui.TableHeadersRow()

		for _, row := range sv.rows(store) {
			imgui.TableNextRow()

			imgui.TableSetColumnIndex(0)
			imgui.Text(row.Handle.String())

			imgui.TableSetColumnIndex(1)
			imgui.Text(fmt.Sprintf("%d", row.Handle.Index()))

			imgui.TableSetColumnIndex(2)
			imgui.Text(fmt.Sprintf("%d", row.Handle.Generation()))

			imgui.TableSetColumnIndex(3)
			imgui.Text(row.Position.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (sv *SlotViewerPanel) rows(store *native.Store) []slotRow {
	var rows []slotRow
	for h, pos := range store.Positions() {
		if sv.filterText != "" && !strings.Contains(h.String(), sv.filterText) {
			continue
		}
		rows = append(rows, slotRow{Handle: h, Position: pos})
	}
	return rows
}
