// Package discovery provides mDNS-based discovery of IoT devices on the
// local network.
//
// The panel identifies devices by MAC address, which is rarely printed on
// the device itself. Discovery browses for local HTTP services advertising
// a "mac" TXT record so users can match the rows in their panel to the
// hardware in their home. It never talks to the account console.
package discovery
