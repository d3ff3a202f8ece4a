package hxconnect

// ActionCreator builds an action from call arguments.
type ActionCreator func(args ...any) Action

// BoundActionCreator builds an action and dispatches it.
type BoundActionCreator func(args ...any)

// BindActionCreators returns props holding one BoundActionCreator per
// creator, each dispatching through dispatch.
//
//	props := hxconnect.BindActionCreators(map[string]hxconnect.ActionCreator{
//	    "increment": func(...any) hxconnect.Action { return hxconnect.Action{Type: "INC"} },
//	}, store.Dispatch)
//	props["increment"].(hxconnect.BoundActionCreator)()
func BindActionCreators(creators map[string]ActionCreator, dispatch Dispatch) Props {
	bound := make(Props, len(creators))
	for name, create := range creators {
		if create == nil {
			continue
		}
		bound[name] = BoundActionCreator(func(args ...any) {
			dispatch(create(args...))
		})
	}
	return bound
}
