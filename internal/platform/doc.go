// Package platform describes what the host environment allows an
// acquisition run to do.
//
// Capabilities carries three permission grants and the OS-version ordinal
// (the Android SDK level). The acquisition chain treats it as read-only
// input; Detect builds it from settings and the device's build.prop.
package platform
