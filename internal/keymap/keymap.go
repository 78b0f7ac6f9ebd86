package keymap

// Contexts in which bindings apply.
const (
	ContextGlobal = "global"
	ContextQueue  = "queue"
	ContextDrag   = "drag"
	ContextMenu   = "playlist-menu"
	ContextLocal  = "local-songs"
	ContextList   = "playlist"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains all key bindings. Cursor movement (j/k, g/G, ctrl+d/u) is
// handled by the list cursor and not listed here.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},

	{ActionSelect, []string{"enter"}, "Play row / play suggestion next", ContextQueue},
	{ActionGrab, []string{" "}, "Grab row to reorder", ContextQueue},
	{ActionDelete, []string{"d", "delete"}, "Remove from queue", ContextQueue},
	{ActionPlayNext, []string{"n"}, "Play suggestion next", ContextQueue},
	{ActionEnqueue, []string{"e"}, "Add suggestion to queue", ContextQueue},
	{ActionShuffle, []string{"s"}, "Shuffle queue", ContextQueue},
	{ActionToggleLoop, []string{"l"}, "Toggle queue loop", ContextQueue},
	{ActionAddToPlaylist, []string{"p"}, "Add to playlist", ContextQueue},
	{ActionKeepLocal, []string{"m"}, "Toggle song in local songs", ContextQueue},
	{ActionLocalSongs, []string{"L"}, "Local songs", ContextQueue},
	{ActionPlaylists, []string{"P"}, "Playlists", ContextQueue},

	{ActionDragDown, []string{"j", "down"}, "Move down", ContextDrag},
	{ActionDragUp, []string{"k", "up"}, "Move up", ContextDrag},
	{ActionDragTop, []string{"g", "home"}, "Move to top", ContextDrag},
	{ActionDragBottom, []string{"G", "end"}, "Move to bottom", ContextDrag},
	{ActionDrop, []string{"enter", " "}, "Drop", ContextDrag},
	{ActionCancel, []string{"esc"}, "Cancel move", ContextDrag},

	{ActionChoose, []string{"enter"}, "Add / new playlist", ContextMenu},
	{ActionClose, []string{"esc", "q"}, "Close", ContextMenu},
	{ActionToggleOrder, []string{"o"}, "Toggle order", ContextMenu},
	{ActionCycleSort, []string{"S"}, "Next sort field", ContextMenu},
	{ActionOpen, []string{"v", "right"}, "Show playlist", ContextMenu},
	{ActionRename, []string{"r"}, "Rename playlist", ContextMenu},
	{ActionRemove, []string{"D"}, "Delete playlist (press twice)", ContextMenu},

	{ActionEnqueue, []string{"enter", "e"}, "Add song to queue", ContextLocal},
	{ActionPlayNext, []string{"n"}, "Play song next", ContextLocal},
	{ActionForgetLocal, []string{"x"}, "Remove from local songs", ContextLocal},
	{ActionToggleOrder, []string{"o"}, "Toggle order", ContextLocal},
	{ActionCycleSort, []string{"S"}, "Next sort field", ContextLocal},
	{ActionClose, []string{"esc", "q"}, "Close", ContextLocal},

	{ActionEnqueue, []string{"enter", "e"}, "Add entry to queue", ContextList},
	{ActionPlayNext, []string{"n"}, "Play entry next", ContextList},
	{ActionEnqueueAll, []string{"a"}, "Add playlist to queue", ContextList},
	{ActionDelete, []string{"d", "delete"}, "Remove from playlist", ContextList},
	{ActionMoveUp, []string{"K"}, "Move entry up", ContextList},
	{ActionMoveDown, []string{"J"}, "Move entry down", ContextList},
	{ActionClose, []string{"esc", "q", "left"}, "Back", ContextList},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Resolvers for each context.
var (
	Global = NewResolver(ByContext(ContextGlobal))
	Queue  = NewResolver(ByContext(ContextQueue))
	Drag   = NewResolver(ByContext(ContextDrag))
	Menu   = NewResolver(ByContext(ContextMenu))
	Local  = NewResolver(ByContext(ContextLocal))
	List   = NewResolver(ByContext(ContextList))
)
