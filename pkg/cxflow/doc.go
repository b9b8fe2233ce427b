// Package cxflow is the public construction API for contact flows. It wraps
// the internal graph IR in a fluent builder: convenience constructors return
// node Handles, and the connection verbs Then, When, Otherwise and OnError
// chain off a Handle to append edges.
//
//	b := cxflow.New("support-line")
//	welcome := b.PlayPrompt("Welcome.")
//	menu := b.GetInput("Press 1 for sales, 2 for support.", 5)
//	sales := b.PlayPrompt("Connecting you to sales.")
//	bye := b.Disconnect()
//	welcome.Then(menu)
//	menu.When("1", sales).Otherwise(bye)
//	sales.Then(bye)
//	doc, diags, err := b.Compile()
//
// Targets may also be raw node ids (cxflow.NodeID), which supports loops and
// forward references; unresolved ids fail at Compile, not at insertion.
//
// Construction errors are sticky: the first error any call produces is
// retained, later calls become no-ops, and the error surfaces from Err or
// Compile. This keeps chains readable without discarding failures. A Builder
// is not safe for concurrent use; build one flow per goroutine.
package cxflow
