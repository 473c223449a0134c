// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects, the task store
// and the response cache (both defined in internal/store) to fulfill the
// task-management workflow.
//
// Services receive their dependencies through constructor injection and
// translate store-level errors into application-level errors for the API
// layer. Cache population and invalidation are explicit calls wrapped around
// the workflow methods; cache failures degrade to cache misses and never
// fail a request.
package service
