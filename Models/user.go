package Models

import (
	"gorm.io/gorm"
)

// User is a business account. A branch account is a User whose ParentID
// points to the organization's owner account, so a chain owner sees every
// branch through that link.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password []byte `json:"-"`
	// Permission levels follow the admin panel: 1 = read-only, 3 = branch
	// manager, 4 = organization owner.
	Permission int   `json:"permission"`
	ParentID   *uint `json:"parent_id" gorm:"index"`
	// Fixed UTC offset of the business's home timezone, in hours. Every
	// temporal computation takes this value; nothing hardcodes an offset.
	UTCOffsetHours int `json:"utc_offset_hours"`
}

// StaffMember is a person who executes tasks: either an online team member
// or an offline operator who logs in at a kiosk with a PIN code. Both draw
// ids from this table.
type StaffMember struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`
	PhotoURL string `json:"photo_url"`
	PINHash  []byte `json:"-"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// BranchIDs returns the tenant ids an owner account can see: its own id
// plus the id of every branch account under it.
func BranchIDs(db *gorm.DB, owner User) ([]uint, error) {
	ids := []uint{owner.ID}
	var branches []User
	if err := db.Where("parent_id = ?", owner.ID).Find(&branches).Error; err != nil {
		return nil, err
	}
	for _, b := range branches {
		ids = append(ids, b.ID)
	}
	return ids, nil
}
