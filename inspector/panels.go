package inspector

import (
	"github.com/plus3/scriptbridge/ecs"
)

type EntityBrowserPanel struct {
	cache              *entityBrowserCache
	selected           ecs.EntityId
	filterText         string
	filterKind         string
	maxEntitiesPerPage int
	currentPage        int
}

type BehaviorInspectorPanel struct {
	selected ecs.EntityId
}

type KindViewerPanel struct {
	kinds         []KindInfo
	selectedKind  string
	sortColumn    int
	sortAscending bool
}

type SlotViewerPanel struct {
	filterText string
}

type PerformanceStatsPanel struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
