// Package testutil provides lifecycle helpers for components that tests
// start, reset and tear down, such as the fake chat API in testutil/chatapi.
//
//	func TestSend(t *testing.T) {
//	    api := chatapi.New(chatapi.Config{})
//	    testutil.T(t).Setup(api)
//	    // api is stopped when the test ends
//	}
//
// TestComponent extends component.Component with Reset, Snapshot and
// Restore so a single server can be shared by subtests without leaking
// state between them.
package testutil
