// Package input connects key events to the resolver and publishes the
// resulting editor actions.
//
// The Handler tracks the current mode, runs input hooks, feeds events to
// a resolver.Resolver and sends an Action for every command that fires.
// Switching modes abandons whatever was pending in the mode being left.
//
// # Usage
//
//	store, _ := keymap.NewStore(keymap.DefaultMaps(command.NewBuiltinCatalog()))
//	h := input.NewHandler(input.DefaultConfig(), resolver.New(store))
//	defer h.Close()
//
//	go func() {
//	    for action := range h.Actions() {
//	        editor.Run(action.Command, action.Count)
//	    }
//	}()
//
//	h.HandleKeyEvent(key.MustParse("g"))
//	h.HandleKeyEvent(key.MustParse("g"))
//
// Actions are delivered on a buffered channel. When the consumer falls
// behind, the oldest pending action is dropped.
package input
