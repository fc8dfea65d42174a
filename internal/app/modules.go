package app

import (
	"github.com/vk/navgridgo/actions/goback"
	"github.com/vk/navgridgo/actions/navigate"
	"github.com/vk/navgridgo/internal/registry"
)

// coreModules is the definitive list of all action modules that are compiled
// into the navgrid binary.
var coreModules = []registry.Module{
	&navigate.Module{},
	&goback.Module{},
}
