// Package checker implements the put/get verification protocol against the
// laberator service.
//
// Architecture overview:
//
//   - AuthClient registers or logs in over HTTP and returns the session
//     cookies in the order the service set them.
//   - Channel is one websocket connection to the command endpoint. Each
//     command is a JSON envelope {"Command", "Data"} answered by exactly one
//     frame.
//   - Checker composes both into the put and get pipelines. Every failure
//     leaves a step as a *status.Error so cmd/ can turn it into an exit code
//     with status.Classify.
//
// Transport failures are split by whether the service answered: timeouts,
// refused or reset connections are Unreachable, anything the service sent
// that breaks the wire contract is a ProtocolViolation.
package checker
