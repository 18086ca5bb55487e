// Package resources exposes Spline scenes and their objects, materials,
// states and events as read-only markdown documents under the spline://
// URI scheme.
//
//	catalog := resources.NewCatalog(client)
//	catalog.Register(srv)
//
// Lists link to their detail documents, e.g. spline://scene/{sceneId}/object/{objectId}.
package resources
