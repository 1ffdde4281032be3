// Package domain contains the entities shared across the application, such as
// users and stored arm simulations. They carry no infrastructure concerns.
package domain
