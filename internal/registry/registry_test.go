package registry

import "testing"

func TestRegisterAndList(t *testing.T) {
	Register(GameInfo{ID: "zz_test_b", Title: "B", Order: 1001})
	Register(GameInfo{ID: "zz_test_a", Title: "A", Order: 1000})

	if !Exists("zz_test_a") {
		t.Fatal("registered game should exist")
	}
	if Exists("zz_missing") {
		t.Error("unregistered game should not exist")
	}

	info, err := Get("zz_test_b")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if info.Title != "B" {
		t.Errorf("Get() title = %q, expected B", info.Title)
	}

	if _, err := Get("zz_missing"); err == nil {
		t.Error("Get() of unknown game should fail")
	}

	list := List()
	ia, ib := -1, -1
	for i, g := range list {
		switch g.ID {
		case "zz_test_a":
			ia = i
		case "zz_test_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() should order by Order: a=%d b=%d", ia, ib)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz_dup"})

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(GameInfo{ID: "zz_dup"})
}
