// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

// Package client wires the sayright client runtime: local mirror, remote
// document store, identity, synced collections, and the background refresh
// job, assembled into one [App] consumed by the CLI commands.
package client
