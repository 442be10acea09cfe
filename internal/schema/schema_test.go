package schema

import "testing"

func TestValidateToolchainConfig(t *testing.T) {
	valid := []byte(`{
		"c_compiler": "cc", "cpp_compiler": "c++", "linker": "cc",
		"c_flags": [], "cpp_flags": [], "c_link_flags": [], "cpp_link_flags": [],
		"compiler_type": "gcc"
	}`)
	if err := ValidateToolchainConfig(valid); err != nil {
		t.Fatalf("expected valid config to pass: %v", err)
	}

	missing := []byte(`{"c_compiler": "cc"}`)
	if err := ValidateToolchainConfig(missing); err == nil {
		t.Fatalf("expected missing-fields config to fail validation")
	}
}

func TestValidateCheck(t *testing.T) {
	valid := []byte(`{"type": "Function", "name": "ac_cv_func_printf"}`)
	if err := ValidateCheck(valid); err != nil {
		t.Fatalf("expected valid check to pass: %v", err)
	}

	badKind := []byte(`{"type": "Bogus", "name": "x"}`)
	if err := ValidateCheck(badKind); err == nil {
		t.Fatalf("expected unknown kind to fail validation")
	}
}

func TestValidateResult(t *testing.T) {
	valid := []byte(`{"ac_cv_func_printf": {"success": true, "value": "1"}}`)
	if err := ValidateResult(valid); err != nil {
		t.Fatalf("expected valid result to pass: %v", err)
	}

	badShape := []byte(`{"ac_cv_func_printf": {"value": "1"}}`)
	if err := ValidateResult(badShape); err == nil {
		t.Fatalf("expected missing success field to fail validation")
	}
}
