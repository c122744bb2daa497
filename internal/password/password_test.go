package password

import "testing"

func TestHashProducesDistinctOutputs(t *testing.T) {
	first, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("hashing the same password twice produced identical hashes")
	}
}

func TestVerify(t *testing.T) {
	hash, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !Verify("secret1", hash) {
		t.Error("Verify() = false for the correct password")
	}
	if Verify("wrong-password", hash) {
		t.Error("Verify() = true for a wrong password")
	}
	if Verify("secret1", "not-a-bcrypt-hash") {
		t.Error("Verify() = true for a malformed hash")
	}
}
