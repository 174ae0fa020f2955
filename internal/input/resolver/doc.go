// Package resolver turns a stream of key events into editor commands.
//
// A Resolver keeps one cursor per mode. Each event either moves the
// cursor deeper into the mode map (Pending), fires a command (Matched),
// abandons the input (Cancelled) or misses (NotFound). Terminal outcomes
// return the cursor to the mode root, or to the active sticky group.
//
// Unmodified digits typed before a command form a count prefix. A leading
// '0' is never a count, and a digit bound by the mode root or by any group
// on the current path is looked up instead of counted.
//
//	r := resolver.New(store)
//	for ev := range events {
//	    res := r.Feed(mode.Normal, ev)
//	    if res.Kind == resolver.Matched {
//	        run(res.Command, res.Count)
//	    }
//	}
//
// A Resolver is safe for concurrent use, but events for one mode must be
// fed in order.
package resolver
