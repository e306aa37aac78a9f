// Package client provides the unified entry point over the concrete provider
// adapters. A Client holds one adapter per supported provider identity plus
// the active selection; StreamCompletion dispatches to whichever adapter is
// active, so callers switch vendors without touching request construction,
// credentials, or stream consumption.
//
// The primary entry point is [New], which constructs every adapter from its
// environment variables. Use [Client.Use] to switch the active provider
// between calls and [Client.UpdateAPIKey] to rotate a credential at runtime;
// neither affects streams already in flight.
package client
