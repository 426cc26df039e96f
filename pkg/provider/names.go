package provider

var firstNames = []string{
	"Aaliyah", "Abel", "Ada", "Adrian", "Aisha", "Alan", "Albert", "Alejandro",
	"Alice", "Amara", "Amelia", "Andre", "Angela", "Anika", "Arthur", "Aurora",
	"Beatrice", "Benjamin", "Bianca", "Boris", "Camila", "Carlos", "Carmen", "Cecilia",
	"Charles", "Chloe", "Clara", "Damian", "Daniel", "Daria", "David", "Diego",
	"Dmitri", "Edith", "Eleanor", "Elena", "Elias", "Emma", "Ethan", "Eva",
	"Felix", "Fiona", "Frances", "Gabriel", "Grace", "Hannah", "Hector", "Helen",
	"Hugo", "Ibrahim", "Ines", "Isaac", "Ivy", "Jack", "Jade", "James",
	"Javier", "Joan", "Jonas", "Julia", "Kai", "Kamala", "Katherine", "Kenji",
	"Lara", "Leo", "Lina", "Lucas", "Lucia", "Luna", "Malik", "Margaret",
	"Maria", "Marcus", "Maya", "Mei", "Miguel", "Mila", "Nadia", "Naomi",
	"Nia", "Noah", "Olga", "Omar", "Oscar", "Paula", "Priya", "Rafael",
	"Ravi", "Rosa", "Ruth", "Samuel", "Sara", "Sofia", "Tariq", "Tess",
	"Theo", "Uma", "Valentina", "Victor", "Wanda", "Yara", "Yusuf", "Zoe",
}

var lastNames = []string{
	"Abbott", "Adams", "Alvarez", "Anderson", "Bailey", "Baker", "Barnes", "Bauer",
	"Bell", "Bennett", "Brooks", "Brown", "Campbell", "Carter", "Castillo", "Chen",
	"Clark", "Collins", "Cook", "Cooper", "Cruz", "Davis", "Diaz", "Edwards",
	"Evans", "Fischer", "Flores", "Foster", "Garcia", "Gomez", "Gonzalez", "Gray",
	"Green", "Hall", "Harris", "Hayes", "Hernandez", "Hill", "Hoffmann", "Hopper",
	"Howard", "Hughes", "Ito", "Jackson", "James", "Jenkins", "Johnson", "Jones",
	"Kelly", "Kim", "King", "Klein", "Kowalski", "Lee", "Lewis", "Lopez",
	"Lovelace", "Martin", "Martinez", "Meyer", "Miller", "Mitchell", "Moore", "Morales",
	"Morgan", "Murphy", "Nakamura", "Nelson", "Nguyen", "Novak", "Okafor", "Ortiz",
	"Parker", "Patel", "Perez", "Peterson", "Phillips", "Price", "Ramirez", "Reed",
	"Reyes", "Richardson", "Rivera", "Roberts", "Robinson", "Rodriguez", "Rogers", "Ross",
	"Russell", "Sanchez", "Sanders", "Schmidt", "Scott", "Silva", "Singh", "Smith",
	"Stewart", "Sullivan", "Tanaka", "Taylor", "Thomas", "Thompson", "Torres", "Turing",
	"Turner", "Walker", "Ward", "Watson", "White", "Williams", "Wilson", "Wood",
	"Wright", "Yamamoto", "Young", "Zhang",
}

var companySuffixes = []string{
	"Inc", "LLC", "Group", "and Sons",
}
