// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements a minimal sync client used by the syncmon
// monitor.
//
// It connects to /api/sync, says hello and turns every server message into
// an [Event]. On reconnect it resumes from the cursors of the last page it
// received, the way a real client would after a dropped connection.
package client
