package mysql

// Note: `text` and `date` are reserved-ish in MySQL; keep them quoted everywhere.

const insertReviewSQL = "INSERT INTO reviews\n" +
	"  (id, location, rating, `date`, `text`, sentiment, topics, suggested_reply)\n" +
	"VALUES (?, ?, ?, ?, ?, ?, ?, NULL)"

const getReviewSQL = "SELECT id, location, rating, `date`, `text`, sentiment, topics, suggested_reply\n" +
	"FROM reviews WHERE id = ?"

// Ordered by insertion so a given store state always lists the same way.
const listReviewsSQL = "SELECT id, location, rating, `date`, `text`, sentiment, topics, suggested_reply\n" +
	"FROM reviews ORDER BY created_at, id"

const setReplySQL = `UPDATE reviews SET suggested_reply = ? WHERE id = ?`

const getReplySQL = `SELECT suggested_reply FROM reviews WHERE id = ?`
