// Package component defines the lifecycle interfaces implemented by chatkit
// building blocks that own long-lived resources, such as a user agent with
// its pooled connections.
//
//   - Component: Start/Stop/Health lifecycle
//   - Describable: one-line self description for startup output
package component
