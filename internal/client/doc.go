// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It wires configuration, storage, the HTTP adapter, the session manager,
// client services and background workers into a single process lifecycle,
// and hands the result to the command line as a cli.Runtime.
package client
