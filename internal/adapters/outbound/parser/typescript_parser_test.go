package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/parser"
	"github.com/boundary-cli/boundary/internal/domain"
)

const tsSource = `import { User } from "../domain/user";
import * as path from "node:path";
import { Injectable } from "@nestjs/common";

export interface UserRepository {
  findById(id: string): Promise<User | null>;
  save(user: User): Promise<void>;
}

export abstract class Notifier {
  abstract notify(user: User, message: string): Promise<void>;
}

@Entity()
export class UserRecord {
  @PrimaryGeneratedColumn()
  id: number;

  @Column()
  email: string;

  rename(email: string): void {
    this.email = email;
  }
}

export function warmCache(): void {}
`

func TestTypeScriptParser_Components(t *testing.T) {
	pf, err := parser.NewTypeScriptParser().Parse("src/app/user.ts", []byte(tsSource))
	require.NoError(t, err)
	assert.Equal(t, domain.LangTypeScript, pf.Language)

	repo := componentByName(pf, "UserRepository")
	require.NotNil(t, repo)
	assert.Equal(t, domain.KindInterface, repo.Kind)
	require.Len(t, repo.Methods, 2)
	assert.Equal(t, domain.Method{Name: "findById", Arity: 1}, repo.Methods[0])

	notifier := componentByName(pf, "Notifier")
	require.NotNil(t, notifier)
	assert.Equal(t, domain.KindAbstractClass, notifier.Kind)

	record := componentByName(pf, "UserRecord")
	require.NotNil(t, record)
	assert.Equal(t, domain.KindClass, record.Kind)
	assert.Contains(t, record.Annotations, "Entity")
	require.Len(t, record.Fields, 2)
	assert.Contains(t, record.Fields[0].Tags, "PrimaryGeneratedColumn")
	assert.Contains(t, record.Fields[1].Tags, "Column")

	fn := componentByName(pf, "warmCache")
	require.NotNil(t, fn)
	assert.Equal(t, domain.KindFunction, fn.Kind)
}

func TestTypeScriptParser_Imports(t *testing.T) {
	pf, err := parser.NewTypeScriptParser().Parse("src/app/user.ts", []byte(tsSource))
	require.NoError(t, err)

	byPath := make(map[string]domain.RawImport)
	for _, imp := range pf.Imports {
		byPath[imp.Path] = imp
	}

	rel, ok := byPath["../domain/user"]
	require.True(t, ok)
	assert.False(t, rel.Stdlib)
	assert.Equal(t, []string{"User"}, rel.Symbols)
	assert.Equal(t, 1, rel.Line)

	node, ok := byPath["node:path"]
	require.True(t, ok)
	assert.True(t, node.Stdlib)

	bare, ok := byPath["@nestjs/common"]
	require.True(t, ok)
	assert.False(t, bare.Stdlib)
}

func TestTypeScriptParser_IsStdlib(t *testing.T) {
	p := parser.NewTypeScriptParser()
	assert.True(t, p.IsStdlib("node:fs"))
	assert.True(t, p.IsStdlib("path"))
	// Bare unscoped specifiers are filtered with the built-ins.
	assert.True(t, p.IsStdlib("react"))
	assert.False(t, p.IsStdlib("@angular/core"))
	assert.False(t, p.IsStdlib("./user"))
	assert.False(t, p.IsStdlib("lodash/merge"))
}
