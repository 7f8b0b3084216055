package cmmn_test

import (
	"testing"

	. "github.com/andrew-torda/sw3d/pdb/cmmn"
)

func TestXyzOk(t *testing.T) {
	var xyz Xyz
	xyz = BrokenXyz
	if xyz.Ok() {
		t.Error("cannot even check if a value is OK")
	}
	xyz = Xyz{1, 1, 1}
	if !xyz.Ok() {
		t.Error("OK should be true")
	}
}

func TestOneLetter(t *testing.T) {
	atoms := []CaAtom{
		{ResName: "ALA"},
		{ResName: "mse"},
		{ResName: "HOH"},
		{ResName: "GLY", Code: 'w'},
		{Code: 'K'},
	}
	if s := string(Seq(atoms)); s != "AMXWK" {
		t.Errorf("Seq got %s wanted AMXWK", s)
	}
	if len(Seq(nil)) != 0 {
		t.Error("empty atoms should give empty sequence")
	}
}

func TestFind(t *testing.T) {
	chns := ChnSl{{ChainID: "A"}, {ChainID: "B"}}
	if c, ok := chns.Find(""); !ok || c.ChainID != "A" {
		t.Error("empty chain id should give first chain")
	}
	if c, ok := chns.Find("B"); !ok || c.ChainID != "B" {
		t.Error("did not find chain B")
	}
	if _, ok := chns.Find("Q"); ok {
		t.Error("found a chain that is not there")
	}
	if n := chns.ChainNames(); len(n) != 2 || n[0] != "A" || n[1] != "B" {
		t.Errorf("ChainNames gave %v", n)
	}
	var empty ChnSl
	if _, ok := empty.Find(""); ok {
		t.Error("no chains, but Find said ok")
	}
}

func TestCoords(t *testing.T) {
	atoms := []CaAtom{{Xyz: Xyz{1, 2, 3}}, {Xyz: BrokenXyz}}
	x := Coords(atoms)
	if len(x) != 2 || x[0] != (Xyz{1, 2, 3}) || x[1].Ok() {
		t.Errorf("Coords gave %v", x)
	}
}
