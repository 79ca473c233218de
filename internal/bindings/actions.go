package bindings

// Action identifiers for every rebindable shortcut. Config files refer
// to these names in their [bindings] table.
const (
	ActionQuit             ActionID = "quit"
	ActionApplyTheme       ActionID = "apply-theme"
	ActionToggleSystemSync ActionID = "toggle-system-sync"
	ActionDuplicateTheme   ActionID = "duplicate-theme"
	ActionOpenThemeFolder  ActionID = "open-theme-folder"
	ActionImportTheme      ActionID = "import-theme"
	ActionRefreshThemes    ActionID = "refresh-themes"
	ActionToggleHistory    ActionID = "history"
	ActionToggleCompare    ActionID = "compare"
	ActionCopyThemePath    ActionID = "copy-theme-path"
	ActionToggleHelp       ActionID = "help"
	ActionCheckUpdate      ActionID = "check-update"
)

type actionDefinition struct {
	id         ActionID
	defaults   [][]string
	repeatable bool
}

var definitions = []actionDefinition{
	{id: ActionQuit, defaults: [][]string{{"ctrl+c"}, {"shift+q"}}},
	{id: ActionApplyTheme, defaults: [][]string{{"enter"}}},
	{id: ActionToggleSystemSync, defaults: [][]string{{"s"}}},
	{id: ActionDuplicateTheme, defaults: [][]string{{"d"}}},
	{id: ActionOpenThemeFolder, defaults: [][]string{{"o"}}},
	{id: ActionImportTheme, defaults: [][]string{{"i"}}},
	{id: ActionRefreshThemes, defaults: [][]string{{"r"}, {"g", "r"}}, repeatable: true},
	{id: ActionToggleHistory, defaults: [][]string{{"h"}, {"g", "h"}}},
	{id: ActionToggleCompare, defaults: [][]string{{"c"}}},
	{id: ActionCopyThemePath, defaults: [][]string{{"y"}}},
	{id: ActionToggleHelp, defaults: [][]string{{"shift+/"}}},
	{id: ActionCheckUpdate, defaults: [][]string{{"g", "u"}}},
}

var definitionLookup = func() map[ActionID]actionDefinition {
	lookup := make(map[ActionID]actionDefinition, len(definitions))
	for _, def := range definitions {
		lookup[def.id] = def
	}
	return lookup
}()
