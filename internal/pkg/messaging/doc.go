// Package messaging publishes and consumes domain events independently of the
// broker.
//
// Drivers: NATS (queue subscriptions), Kafka (consumer groups with explicit
// commits) and an in-process Memory broker for single-instance runs and
// tests. Messages carry a JSON body plus string headers; the correlation id
// travels in the "cID" header.
package messaging
