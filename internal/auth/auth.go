/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package auth is the session glue around the editor: who is signed in,
// signing out, and gating the editor route on a principal being present.
// The identity service itself is remote; this package only talks to it.
package auth

import (
	"context"
	"errors"
)

// ErrNoPrincipal means nobody is signed in.
var ErrNoPrincipal = errors.New("no authenticated principal")

// Routes the gate resolves between.
const (
	RouteEditor = "/editor"
	RouteSignIn = "/signin"
)

// Principal is the signed-in user as the identity service reports it.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	ProviderID  string `json:"providerId"`
}

// Provider reports the current principal and signs out. Current returns
// ErrNoPrincipal when signed out.
type Provider interface {
	Current(ctx context.Context) (Principal, error)
	SignOut(ctx context.Context) error
}

// Gate decides where navigation lands.
type Gate struct {
	Provider Provider
}

// Resolve maps a requested route to the one that is shown. The editor needs
// a principal and otherwise redirects to sign-in; a signed-in user asking
// for sign-in goes straight to the editor. Other routes pass through.
func (g Gate) Resolve(ctx context.Context, route string) (string, Principal) {
	if g.Provider == nil {
		if route == RouteEditor {
			return RouteSignIn, Principal{}
		}
		return route, Principal{}
	}
	p, err := g.Provider.Current(ctx)
	signedIn := err == nil
	switch {
	case route == RouteEditor && !signedIn:
		return RouteSignIn, Principal{}
	case route == RouteSignIn && signedIn:
		return RouteEditor, p
	}
	return route, p
}
