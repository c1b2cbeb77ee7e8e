// Package models provides the shared configuration model for stackgen.
//
// This package contains the option enums and the [ProjectConfig] aggregate
// that every pipeline stage reads. It has no dependencies on other stackgen
// packages so it can be imported from the CLI, the validator and the
// template layer alike.
//
// # Options
//
// Each choice is a string-backed enum with an IsValid method and a
// Valid<Name>s listing:
//   - [Frontend]: web, native (none on input only)
//   - [Backend]: hono, express, elysia, next
//   - [Runtime]: bun, node, workers
//   - [Database]: none, sqlite, postgres, mysql, mongodb
//   - [ORM]: none, drizzle, prisma
//   - [Auth]: none, better-auth, clerk
//   - [PackageManager]: npm, pnpm, bun
//   - [Addon]: biome, husky, tauri, electron, pwa
//   - [Example]: todo, ai
//
// # Configuration
//
// A raw [ProjectConfig] built by the CLI is not trusted until it passes
// config.Validate, which normalizes it and enforces the compatibility rules:
//
//	cfg, err := config.Validate(raw)
//	if err != nil {
//	    var ve *config.ValidationError
//	    if errors.As(err, &ve) {
//	        fmt.Println("invalid", ve.Field)
//	    }
//	}
package models
