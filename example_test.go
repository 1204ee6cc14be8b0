package archivecrypt_test

import (
	"fmt"

	"github.com/mohamed20102002/archivecrypt"
)

func Example() {
	session := archivecrypt.NewSession()

	// First-time setup: no persisted salt yet. Store the returned salt next
	// to the database; later starts pass it back to recover the same key.
	salt, err := session.Initialize("the master password", nil)
	if err != nil {
		panic(err)
	}
	_ = salt

	stored, err := session.EncryptField("case number 4411-B")
	if err != nil {
		panic(err)
	}

	plaintext, err := session.DecryptField(stored)
	if err != nil {
		panic(err)
	}

	fmt.Println(plaintext)
	// Output: case number 4411-B
}

func Example_legacyData() {
	session := archivecrypt.NewSession()
	if _, err := session.Initialize("the master password", nil); err != nil {
		panic(err)
	}

	// Rows written before encryption was enabled pass through unchanged.
	plaintext, err := session.DecryptField("filed under miscellaneous")
	if err != nil {
		panic(err)
	}

	fmt.Println(plaintext)
	fmt.Println(archivecrypt.IsEncryptedField("filed under miscellaneous"))
	// Output:
	// filed under miscellaneous
	// false
}

func Example_passwordChange() {
	session := archivecrypt.NewSession()
	oldSalt, err := session.Initialize("old password", nil)
	if err != nil {
		panic(err)
	}

	stored, _ := session.EncryptField("to be migrated")

	// Derive the rotation key pair; nothing is committed yet.
	newKey, newSalt, err := archivecrypt.GenerateNewMasterKey("new password")
	if err != nil {
		panic(err)
	}
	oldKey := archivecrypt.DeriveKey("old password", oldSalt, archivecrypt.DefaultIterations)

	// In production a Sweeper walks every row; one value shown here.
	migrated, err := archivecrypt.ReEncryptValue(stored, oldKey, newKey)
	if err != nil {
		panic(err)
	}

	// Only after every value migrated: commit and persist newSalt.
	if err := session.CommitRotation(newKey, newSalt); err != nil {
		panic(err)
	}

	plaintext, _ := session.DecryptField(migrated)
	fmt.Println(plaintext)
	// Output: to be migrated
}
