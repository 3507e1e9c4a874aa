// Package arm implements the gRPC query API of the reference arm endpoint.
//
// The service is described by hand on top of protobuf well-known types
// (Empty, BoolValue), so no generated code is needed: ServiceDesc and the
// client stub below play the role of the usual *_grpc.pb.go file.
package arm
