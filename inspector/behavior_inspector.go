package inspector

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
)

func NewBehaviorInspectorPanel() BehaviorInspectorPanel {
	return BehaviorInspectorPanel{}
}

func (bi *BehaviorInspectorPanel) Render(world *ecs.World, selected ecs.EntityId) {
	if !imgui.BeginV("Behavior Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	bi.selected = selected

	if bi.selected == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	e := world.Entity(bi.selected)
	if e == nil {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", bi.selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.Id()))
	imgui.Text(fmt.Sprintf("Name: %s", e.Name()))
	imgui.Text(fmt.Sprintf("Guid: %s", e.Guid()))
	imgui.Separator()

	if imgui.TreeNodeStr("Transform") {
		t := e.Transform()
		pos := t.Position()
		if editVector("Position", &pos) {
			t.SetPosition(pos)
		}
		scale := t.Scale()
		if editVector("Scale", &scale) {
			t.SetScale(scale)
		}
		if p := e.Parent(); p != nil {
			imgui.Text(fmt.Sprintf("Parent: %s (%d)", p.Name(), p.Id()))
		}
		imgui.Text(fmt.Sprintf("Children: %d", e.ChildCount()))
		imgui.Text(fmt.Sprintf("Forward: %s", t.Forward()))
		imgui.Text(fmt.Sprintf("Right: %s", t.Right()))
		imgui.Text(fmt.Sprintf("Up: %s", t.Up()))
		imgui.TreePop()
	}

	for i, b := range e.Behaviors() {
		label := fmt.Sprintf("%s [%s]##%d", b.Name, b.State, i)
		if imgui.TreeNodeStr(label) {
			if b.Err != nil {
				imgui.Text(fmt.Sprintf("Error: %v", b.Err))
			}
			renderInstance(b.Instance)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func editVector(name string, v *geom.Vector3) bool {
	imgui.Text(fmt.Sprintf("%s:", name))
	changed := false
	for i, axis := range []string{"x", "y", "z"} {
		imgui.SameLine()
		imgui.SetNextItemWidth(80)
		if imgui.InputFloat(fmt.Sprintf("##%s.%s", name, axis), &v[i]) {
			changed = true
		}
	}
	return changed
}

func renderInstance(instance any) {
	val := reflect.ValueOf(instance)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			imgui.Text("<nil>")
			return
		}
		val = val.Elem()
	}

	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal, field)
	}
}

// renderField draws one field and writes edits straight back through val,
// which is addressable because instances are held by pointer.
func renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	if val.Type() == reflect.TypeFor[geom.Vector3]() && val.CanSet() {
		v := val.Interface().(geom.Vector3)
		if editVector(name, &v) {
			val.Set(reflect.ValueOf(v))
		}
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				nestedVal := val.Field(nf.Index)
				if nf.IsPointer && !nestedVal.IsNil() {
					nestedVal = nestedVal.Elem()
				}
				renderField(nf.Name, nestedVal, nf)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
